// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultAPIURL is used when a Connection is created without an address.
const DefaultAPIURL = "https://app.writer.com/api"

const authTokenHeader = "X-AUTH-TOKEN"

var serverMessagePattern = regexp.MustCompile(`"errMessage":"([^"]+)"`)

//go:generate mockgen -destination=../internal/mocks/model/client.go -package=mock_model github.com/qordoba/qordoba-go/model Client

// Client is the set of remote calls a Project and an Upload depend on.
// *Connection is the production implementation.
type Client interface {
	RequestAuthToken() (string, error)
	RequestFileUpload(fileName string, file io.Reader, projectID, organizationID int64) (string, error)
	RequestFileUploadUpdate(fileName string, file io.Reader, projectID, fileID int64) (string, error)
	RequestAppendToProject(fileName, uploadID, tag string, projectID int64) (int64, error)
	RequestUpdateProject(uploadID string, fileID, projectID int64) (int64, error)
	FetchLanguages() ([]Language, error)
	FetchProject(projectID int64) (*ProjectMetadata, error)
	FetchProjectSearch(projectID, languageID int64, searchName, status string, offset, limit int) (*PageSearchResult, error)
	FetchTranslationFile(projectID, languageID, pageID int64) (*TranslationFile, error)
}

// RequestRecord describes one successful request made by a Connection.
type RequestRecord struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Connection is the programmatic interface to the translation API. It
// holds the credentials and the lazily obtained auth token.
type Connection struct {
	apiURL   string
	username string
	password string
	apiKey   string

	metadata     map[string]interface{}
	requestCount int
	requests     []*RequestRecord

	headers    map[string]string
	httpClient *http.Client
	logger     log.FieldLogger
}

// NewConnection creates a new instance of Connection. An empty apiURL
// selects DefaultAPIURL.
func NewConnection(apiURL, username, password string) *Connection {
	c := &Connection{
		headers:    make(map[string]string),
		httpClient: &http.Client{},
		logger:     newDefaultLogger(),
	}
	if strings.TrimSpace(apiURL) == "" {
		apiURL = DefaultAPIURL
	}
	c.SetAPIURL(apiURL)
	c.SetUsername(username)
	c.SetPassword(password)

	return c
}

// SetHTTPClient replaces the http.Client used for every request.
func (c *Connection) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// SetLogger replaces the logger.
func (c *Connection) SetLogger(logger log.FieldLogger) {
	c.logger = logger
}

// SetHeader adds a header sent with every request.
func (c *Connection) SetHeader(key, value string) {
	c.headers[key] = value
}

// APIURL returns the base address of the API.
func (c *Connection) APIURL() string {
	return c.apiURL
}

// SetAPIURL sets the base address, without a trailing slash.
func (c *Connection) SetAPIURL(apiURL string) {
	c.apiURL = strings.TrimRight(strings.TrimSpace(apiURL), "/")
}

func (c *Connection) Username() string {
	return c.username
}

func (c *Connection) SetUsername(username string) {
	c.username = strings.TrimSpace(username)
}

func (c *Connection) Password() string {
	return c.password
}

func (c *Connection) SetPassword(password string) {
	c.password = strings.TrimSpace(password)
}

// SetAPIKey sets the auth token directly, skipping the login call.
func (c *Connection) SetAPIKey(apiKey string) {
	c.apiKey = strings.TrimSpace(apiKey)
}

// ConnectionData returns the decoded body of the last login response.
func (c *Connection) ConnectionData() map[string]interface{} {
	return c.metadata
}

// RequestCount returns the number of successful requests made so far.
func (c *Connection) RequestCount() int {
	return c.requestCount
}

// Requests returns the successful requests made so far, oldest first.
func (c *Connection) Requests() []*RequestRecord {
	return c.requests
}

// RequestAuthToken returns the cached token or logs in to obtain one.
func (c *Connection) RequestAuthToken() (string, error) {
	if c.apiKey != "" {
		return c.apiKey, nil
	}
	if c.username == "" {
		return "", newError(KindAuth, CodeUsernameNotProvided, "Username not provided")
	}
	if c.password == "" {
		return "", newError(KindAuth, CodePasswordNotProvided, "Password not provided")
	}
	if c.apiURL == "" {
		return "", newError(KindConnection, CodeURLNotProvided, "API URL not provided")
	}

	req, err := c.newJSONRequest(http.MethodPut, c.buildURL("/login"), &loginRequest{
		Username: c.username,
		Password: c.password,
	})
	if err != nil {
		return "", err
	}

	record, err := c.processRequest(req)
	if err != nil {
		return "", err
	}
	if record.StatusCode != http.StatusOK {
		return "", newError(KindConnection, CodeBadResponse, "Non-200 response from API.")
	}
	if !isJSON(record.Body) {
		return "", newError(KindConnection, CodeBadResponse, "Non-JSON response from API.")
	}

	var body map[string]interface{}
	if err = json.Unmarshal(record.Body, &body); err != nil {
		return "", newError(KindConnection, CodeBadResponse, "Non-JSON response from API.")
	}
	token, ok := body["token"].(string)
	if !ok || token == "" {
		return "", newError(KindConnection, CodeBadResponse, "API token not found in response.")
	}

	c.metadata = body
	c.SetAPIKey(token)

	return c.apiKey, nil
}

// RequestFileUpload uploads a new source file and returns its upload id.
func (c *Connection) RequestFileUpload(fileName string, file io.Reader, projectID, organizationID int64) (string, error) {
	token, err := c.RequestAuthToken()
	if err != nil {
		return "", err
	}

	u := c.buildURL("/organizations/%d/upload/uploadFile_anyType?project_id=%d&content_type_code=JSON", organizationID, projectID)
	req, err := c.newUploadRequest(u, token, fileName, file)
	if err != nil {
		return "", err
	}
	record, err := c.processRequest(req)
	if err != nil {
		return "", err
	}

	var result uploadResponse
	if err = json.Unmarshal(record.Body, &result); err != nil || result.Result != "success" || !result.UploadID.Truthy() {
		return "", newError(KindConnection, CodeUploadFailed, "File upload failed")
	}

	return string(result.UploadID), nil
}

// RequestFileUploadUpdate uploads a new revision of an existing file and
// returns its upload id.
func (c *Connection) RequestFileUploadUpdate(fileName string, file io.Reader, projectID, fileID int64) (string, error) {
	token, err := c.RequestAuthToken()
	if err != nil {
		return "", err
	}

	u := c.buildURL("/projects/%d/files/%d/update/upload?content_type_code=JSON", projectID, fileID)
	req, err := c.newUploadRequest(u, token, fileName, file)
	if err != nil {
		return "", err
	}
	record, err := c.processRequest(req)
	if err != nil {
		return "", err
	}

	var result uploadUpdateResponse
	if err = json.Unmarshal(record.Body, &result); err != nil || !result.ID.Truthy() {
		return "", newError(KindConnection, CodeUploadFailed, "File upload failed")
	}

	return string(result.ID), nil
}

// RequestAppendToProject attaches an upload to the project under the
// given version tag and returns the new file id.
func (c *Connection) RequestAppendToProject(fileName, uploadID, tag string, projectID int64) (int64, error) {
	request := []appendFileRequest{{
		SourceColumns: []string{},
		FileName:      fileName,
		VersionTag:    tag,
		ID:            ID(uploadID),
	}}

	return c.requestFilesIDs(http.MethodPost, c.buildURL("/projects/%d/append_files", projectID), request)
}

// RequestUpdateProject replaces an existing project file with an upload
// and returns the resulting file id.
func (c *Connection) RequestUpdateProject(uploadID string, fileID, projectID int64) (int64, error) {
	request := &applyUpdateRequest{
		KeepInProject: false,
		NewFileID:     ID(uploadID),
	}

	return c.requestFilesIDs(http.MethodPut, c.buildURL("/projects/%d/files/%d/update/apply", projectID, fileID), request)
}

// FetchLanguages returns every language the API knows about.
func (c *Connection) FetchLanguages() ([]Language, error) {
	record, err := c.doAuthenticated(http.MethodGet, c.buildURL("/languages"), nil)
	if err != nil {
		return nil, err
	}

	return NewLanguageListFromReader(bytes.NewReader(record.Body))
}

// FetchProject returns the descriptor of a project.
func (c *Connection) FetchProject(projectID int64) (*ProjectMetadata, error) {
	record, err := c.doAuthenticated(http.MethodGet, c.buildURL("/projects/%d", projectID), nil)
	if err != nil {
		return nil, err
	}

	return NewProjectMetadataFromReader(bytes.NewReader(record.Body))
}

// FetchProjectSearch searches the pages of a project in one target
// language. A status of StatusNone and an empty searchName disable the
// respective filters.
func (c *Connection) FetchProjectSearch(projectID, languageID int64, searchName, status string, offset, limit int) (*PageSearchResult, error) {
	request := &searchRequest{}
	if status != string(StatusNone) {
		request.Status = []string{status}
	}
	if searchName != "" {
		request.Title = searchName
	}

	u := c.buildURL("/projects/%d/languages/%d/page_settings/search?limit=%d&offset=%d", projectID, languageID, limit, offset)
	record, err := c.doAuthenticated(http.MethodPost, u, request)
	if err != nil {
		return nil, err
	}

	return NewPageSearchResultFromReader(bytes.NewReader(record.Body))
}

// FetchTranslationFile exports a page in one target language and
// downloads the resulting file.
func (c *Connection) FetchTranslationFile(projectID, languageID, pageID int64) (*TranslationFile, error) {
	u := c.buildURL("/projects/%d/languages/%d/pages/%d/segments/milestones/-100/export?original_format=false&compress_columns=false", projectID, languageID, pageID)
	record, err := c.doAuthenticated(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var export exportResponse
	if err = json.Unmarshal(record.Body, &export); err != nil {
		return nil, wrapError(err, KindConnection, CodeBadResponse, "Non-JSON export response from API.")
	}
	if export.Filename == "" || export.Token == "" {
		return nil, newError(KindConnection, CodeBadResponse, "Export response is missing filename or token.")
	}

	query := url.Values{}
	query.Set("filename", export.Filename)
	query.Set("token", export.Token)
	record, err = c.doAuthenticated(http.MethodGet, c.buildURL("/file/download?%s", query.Encode()), nil)
	if err != nil {
		return nil, err
	}

	return newTranslationFile(record.Body), nil
}

func (c *Connection) requestFilesIDs(method, u string, request interface{}) (int64, error) {
	record, err := c.doAuthenticated(method, u, request)
	if err != nil {
		return 0, err
	}

	var result filesResponse
	if err = json.Unmarshal(record.Body, &result); err != nil {
		return 0, wrapError(err, KindConnection, CodeBadResponse, "Non-JSON response from API.")
	}
	if len(result.FilesIDs) == 0 {
		return 0, newError(KindConnection, CodeBadResponse, "File id not found in response.")
	}

	return result.FilesIDs[0], nil
}

// doAuthenticated sends a request with the auth token header. A nil
// request body sends no body.
func (c *Connection) doAuthenticated(method, u string, request interface{}) (*RequestRecord, error) {
	token, err := c.RequestAuthToken()
	if err != nil {
		return nil, err
	}

	var req *http.Request
	if request == nil {
		req, err = http.NewRequest(method, u, nil)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create http request")
		}
	} else {
		req, err = c.newJSONRequest(method, u, request)
		if err != nil {
			return nil, err
		}
	}
	req.Header.Set(authTokenHeader, token)

	return c.processRequest(req)
}

// processRequest sends one request. Transport failures and error
// statuses become server errors; anything else is counted and recorded.
func (c *Connection) processRequest(req *http.Request) (*RequestRecord, error) {
	for k, v := range c.headers {
		req.Header.Add(k, v)
	}

	// The query may carry a download token.
	logger := c.logger.WithFields(log.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Debug("Request failed")
		return nil, serverError(err)
	}
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serverError(errors.Wrap(err, "failed to read response body"))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err = errors.Errorf("failed with status code %d: %s", resp.StatusCode, string(body))
		logger.WithError(err).Debug("Request failed")
		return nil, serverError(err)
	}

	c.requestCount++
	record := &RequestRecord{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}
	c.requests = append(c.requests, record)

	logger.WithFields(log.Fields{
		"status":  resp.StatusCode,
		"request": c.requestCount,
	}).Debug("Request completed")

	return record, nil
}

func serverError(err error) *Error {
	if match := serverMessagePattern.FindStringSubmatch(err.Error()); match != nil {
		return wrapError(err, KindServer, CodeServerMessage, match[1])
	}
	return wrapError(err, KindServer, CodeTransport, "request failed")
}

// buildURL builds a complete URL from a path and arguments.
func (c *Connection) buildURL(urlPath string, args ...interface{}) string {
	return fmt.Sprintf("%s%s", c.apiURL, fmt.Sprintf(urlPath, args...))
}

func (c *Connection) newJSONRequest(method, u string, request interface{}) (*http.Request, error) {
	requestBytes, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequest(method, u, bytes.NewReader(requestBytes))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create http request")
	}
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

func (c *Connection) newUploadRequest(u, token, fileName string, file io.Reader) (*http.Request, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("user_key", token); err != nil {
		return nil, errors.Wrap(err, "failed to write user_key field")
	}
	if err := writer.WriteField("file_names", "[]"); err != nil {
		return nil, errors.Wrap(err, "failed to write file_names field")
	}

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(fileName)))
	partHeader.Set("Content-Type", "application/octet-stream")
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create file part")
	}
	if _, err = io.Copy(part, file); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", fileName)
	}
	if err = writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close multipart body")
	}

	req, err := http.NewRequest(http.MethodPost, u, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create http request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(authTokenHeader, token)

	return req, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// closeBody ensures the Body of an http.Response is properly closed.
func closeBody(r *http.Response) {
	if r.Body != nil {
		_, _ = io.Copy(io.Discard, r.Body)
		_ = r.Body.Close()
	}
}
