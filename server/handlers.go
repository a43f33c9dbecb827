package server

import (
	"net/http"
	"strconv"

	"github.com/Luismorlan/instamini/feed"
	"github.com/Luismorlan/instamini/media"
	"github.com/Luismorlan/instamini/model"
	"github.com/Luismorlan/instamini/social"
	Logger "github.com/Luismorlan/instamini/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	defaultListLimit          = 30
	defaultNotificationsLimit = 50

	// Any upstream media failure degrades to this redirect.
	placeholderImageURL = "https://via.placeholder.com/600x600?text=Media"
)

// API binds the feed, social and media services to the REST surface.
type API struct {
	Feed   *feed.Service
	Social *social.Service
	Media  *media.Resolver
	Files  *media.BotFileClient
}

func (a *API) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/get_explore", a.getExplore)
	router.GET("/api/get_post/:post_id", a.getPost)
	router.GET("/api/get_user/:user_id", a.getUser)
	router.GET("/api/get_feed/:user_id", a.getFeed)
	router.GET("/api/get_user_posts/:user_id", a.getUserPosts)
	router.GET("/api/search", a.search)
	router.GET("/api/media/:post_id", a.mediaInfo)
	router.GET("/api/media_proxy", a.mediaProxy)
	router.GET("/api/is_following", a.isFollowing)
	router.GET("/api/notifications/:user_id", a.getNotifications)

	router.POST("/api/like", a.likeToggle)
	router.POST("/api/save", a.saveToggle)
	router.POST("/api/comment", a.createComment)
	router.POST("/api/follow_toggle", a.followToggle)
}

// pathID parses an integer path parameter. On failure it writes the 400
// response and returns ok=false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func (a *API) serverError(c *gin.Context, err error) {
	Logger.Log.Error("request failed: ", err)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
}

// listingError maps a listing failure: malformed pagination is the
// caller's fault, everything else propagates as a server failure.
func (a *API) listingError(c *gin.Context, err error) {
	if errors.Is(err, model.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "limit should be > 0"})
		return
	}
	a.serverError(c, err)
}

func (a *API) getExplore(c *gin.Context) {
	posts, err := a.Feed.Explore(queryInt(c, "limit", defaultListLimit), queryInt(c, "page", 1))
	if err != nil {
		a.listingError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (a *API) getPost(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	post, err := a.Feed.GetPost(postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "post not found"})
			return
		}
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (a *API) getUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	user, err := a.Feed.GetUser(userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "user not found"})
			return
		}
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":      user.UserID,
		"username":     user.Username,
		"display_name": user.DisplayName,
		"bio":          user.Bio,
		"profile_pic":  user.ProfilePic,
		"followers":    user.Followers,
		"following":    user.Following,
	})
}

func (a *API) getFeed(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	posts, err := a.Feed.ForUser(userID, queryInt(c, "limit", defaultListLimit), queryInt(c, "page", 1))
	if err != nil {
		a.listingError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (a *API) getUserPosts(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	posts, err := a.Feed.UserPosts(userID, queryInt(c, "limit", defaultListLimit), queryInt(c, "page", 1))
	if err != nil {
		a.listingError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (a *API) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "q is required"})
		return
	}
	posts, err := a.Feed.Search(query, queryInt(c, "limit", defaultListLimit))
	if err != nil {
		a.listingError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (a *API) mediaInfo(c *gin.Context) {
	postID, ok := pathID(c, "post_id")
	if !ok {
		return
	}
	ref, err := a.Media.Resolve(postID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "post not found"})
			return
		}
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}

func (a *API) mediaProxy(c *gin.Context) {
	fileID := c.Query("file_id")
	if fileID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file_id is required"})
		return
	}

	file, err := a.Files.Fetch(fileID)
	if err != nil {
		c.Redirect(http.StatusFound, placeholderImageURL)
		return
	}
	defer file.Body.Close()

	c.DataFromReader(http.StatusOK, file.ContentLength, file.ContentType, file.Body, nil)
}

func (a *API) isFollowing(c *gin.Context) {
	viewer, err := strconv.ParseInt(c.Query("viewer"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid viewer"})
		return
	}
	target, err := strconv.ParseInt(c.Query("target"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid target"})
		return
	}

	following, err := a.Feed.IsFollowing(viewer, target)
	if err != nil {
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_following": following})
}

func (a *API) getNotifications(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	notifications, err := a.Feed.Notifications(userID, queryInt(c, "limit", defaultNotificationsLimit))
	if err != nil {
		a.listingError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (a *API) likeToggle(c *gin.Context) {
	var input model.ToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	status, err := a.Social.ToggleLike(input.UserID, input.PostID)
	if err != nil {
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (a *API) saveToggle(c *gin.Context) {
	var input model.ToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	status, err := a.Social.ToggleSave(input.UserID, input.PostID)
	if err != nil {
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (a *API) createComment(c *gin.Context) {
	var input model.CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if _, err := a.Social.CreateComment(input.UserID, input.PostID, input.Text); err != nil {
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (a *API) followToggle(c *gin.Context) {
	var input model.FollowToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	result, err := a.Social.ToggleFollow(input.FollowerID, input.TargetID)
	if err != nil {
		if errors.Is(err, social.ErrSelfFollow) {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "cannot follow yourself"})
			return
		}
		a.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
