package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Luismorlan/instamini/feed"
	"github.com/Luismorlan/instamini/media"
	"github.com/Luismorlan/instamini/model"
	"github.com/Luismorlan/instamini/social"
	"github.com/Luismorlan/instamini/utils"
	"github.com/Luismorlan/instamini/utils/dotenv"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func prepareTestAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, _ := utils.CreateTempDB(t)
	api := &API{
		Feed:   feed.NewService(db, nil),
		Social: social.NewService(db),
		Media:  media.NewResolver(db),
		Files:  media.NewBotFileClient("http://localhost:1", "testtoken"),
	}
	router := gin.New()
	api.RegisterRoutes(router)
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 && strings.HasPrefix(w.Body.String(), "{") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestLikeEndpointRoundTrip(t *testing.T) {
	router, db := prepareTestAPI(t)

	require.NoError(t, db.Create(&model.User{UserID: 7, Username: "u"}).Error)
	require.NoError(t, db.Create(&model.Post{PostID: 42, UserID: 7, Type: "photo"}).Error)

	w, resp := doJSON(t, router, "POST", "/api/like", `{"user_id": 7, "post_id": 42}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "liked", resp["status"])

	var post model.Post
	require.NoError(t, db.Where("post_id = ?", 42).First(&post).Error)
	require.Equal(t, 1, post.Likes)

	w, resp = doJSON(t, router, "POST", "/api/like", `{"user_id": 7, "post_id": 42}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "unliked", resp["status"])

	require.NoError(t, db.Where("post_id = ?", 42).First(&post).Error)
	require.Equal(t, 0, post.Likes)
}

func TestFollowToggleSelfReturns400(t *testing.T) {
	router, db := prepareTestAPI(t)

	followers := 2
	require.NoError(t, db.Create(&model.User{UserID: 3, Username: "u", Followers: &followers}).Error)

	w, resp := doJSON(t, router, "POST", "/api/follow_toggle", `{"follower_id": 3, "target_id": 3}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "cannot follow yourself", resp["detail"])

	var user model.User
	require.NoError(t, db.Where("user_id = ?", 3).First(&user).Error)
	require.Equal(t, 2, *user.Followers)
}

func TestFollowToggleReturnsFreshCounters(t *testing.T) {
	router, db := prepareTestAPI(t)

	require.NoError(t, db.Create(&model.User{UserID: 1, Username: "a"}).Error)
	require.NoError(t, db.Create(&model.User{UserID: 2, Username: "b"}).Error)

	w, resp := doJSON(t, router, "POST", "/api/follow_toggle", `{"follower_id": 1, "target_id": 2}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "followed", resp["status"])
	require.Equal(t, float64(1), resp["target_followers"])
	require.Equal(t, float64(1), resp["follower_following"])
}

func TestGetPostNotFoundReturns404(t *testing.T) {
	router, _ := prepareTestAPI(t)

	w, resp := doJSON(t, router, "GET", "/api/get_post/404", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "post not found", resp["detail"])
}

func TestGetExplore(t *testing.T) {
	router, db := prepareTestAPI(t)

	score := 2.0
	require.NoError(t, db.Create(&model.Post{PostID: 1, UserID: 1, Type: "photo", CandidateScore: &score}).Error)
	require.NoError(t, db.Create(&model.Post{PostID: 2, UserID: 1, Type: "photo"}).Error)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/get_explore?limit=10&page=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var posts []model.PostView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 2)
	require.Equal(t, int64(1), posts[0].PostID)
}

func TestGetExploreRejectsNonPositiveLimit(t *testing.T) {
	router, _ := prepareTestAPI(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/get_explore?limit=0", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/get_feed/1?limit=-3", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMediaProxyRedirectsToPlaceholderOnUpstreamFailure(t *testing.T) {
	// Files client points at a closed port, any fetch fails upstream.
	router, _ := prepareTestAPI(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/media_proxy?file_id=abc", nil))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, placeholderImageURL, w.Header().Get("Location"))
}

func TestMediaInfo(t *testing.T) {
	router, db := prepareTestAPI(t)

	photo := "file-abc"
	require.NoError(t, db.Create(&model.Post{PostID: 1, UserID: 1, Type: "photo", Photo: &photo}).Error)

	w, resp := doJSON(t, router, "GET", "/api/media/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "file-abc", resp["file_id"])
	require.Nil(t, resp["video_id"])
	require.Equal(t, "photo", resp["type"])
}
