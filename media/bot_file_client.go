package media

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	Logger "github.com/Luismorlan/instamini/utils/log"
	"github.com/pkg/errors"
)

const defaultContentType = "image/jpeg"

// ErrUpstream is returned on any failure against the bot file host. The
// proxy endpoint degrades it to a placeholder redirect, never an error
// response.
var ErrUpstream = errors.New("upstream media fetch failed")

/*

BotFileClient talks to the external bot file-hosting API. Resolving a
file takes two round trips: getFile returns the host side file_path for
a file_id, then the file endpoint serves the bytes of that path.

*/

type BotFileClient struct {
	baseURL string
	token   string

	client *http.Client
}

func NewBotFileClient(baseURL string, token string) *BotFileClient {
	return &BotFileClient{baseURL: baseURL, token: token, client: &http.Client{}}
}

type getFileResponse struct {
	Ok     bool `json:"ok"`
	Result struct {
		FilePath string `json:"file_path"`
	} `json:"result"`
}

// FetchedFile is a streamed upstream file. The caller owns Body and must
// close it.
type FetchedFile struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// Fetch resolves fileID to its download path and opens the byte stream.
// Returns ErrUpstream on any non-200, malformed or negative answer.
func (c *BotFileClient) Fetch(fileID string) (*FetchedFile, error) {
	metaURL := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", c.baseURL, c.token, url.QueryEscape(fileID))
	res, err := c.client.Get(metaURL)
	if err != nil {
		return nil, errors.Wrap(ErrUpstream, err.Error())
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		Logger.Log.Errorf("getFile returned non-200 http code: %d", res.StatusCode)
		return nil, ErrUpstream
	}

	var meta getFileResponse
	if err := json.NewDecoder(res.Body).Decode(&meta); err != nil {
		return nil, errors.Wrap(ErrUpstream, err.Error())
	}
	if !meta.Ok {
		return nil, ErrUpstream
	}

	downloadURL := fmt.Sprintf("%s/file/bot%s/%s", c.baseURL, c.token, meta.Result.FilePath)
	download, err := c.client.Get(downloadURL)
	if err != nil {
		return nil, errors.Wrap(ErrUpstream, err.Error())
	}
	if download.StatusCode != http.StatusOK {
		download.Body.Close()
		Logger.Log.Errorf("file download returned non-200 http code: %d", download.StatusCode)
		return nil, ErrUpstream
	}

	contentType := download.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	return &FetchedFile{
		Body:          download.Body,
		ContentType:   contentType,
		ContentLength: download.ContentLength,
	}, nil
}
