// Copyright (c) 2020-present Mattermost, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package testlib

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Register adds the routes of the fake translation API to rootRouter.
func Register(rootRouter *mux.Router, context *Context) {
	open := func(handler contextHandlerFunc) *contextHandler {
		return newContextHandler(context, handler, false)
	}
	addContext := func(handler contextHandlerFunc) *contextHandler {
		return newContextHandler(context, handler, true)
	}

	rootRouter.Handle("/login", open(handleLogin)).Methods("PUT")
	rootRouter.Handle("/languages", addContext(handleGetLanguages)).Methods("GET")
	rootRouter.Handle("/organizations/{org:[0-9]+}/upload/uploadFile_anyType", addContext(handleUploadFile)).Methods("POST")
	rootRouter.Handle("/projects/{project:[0-9]+}", addContext(handleGetProject)).Methods("GET")
	rootRouter.Handle("/projects/{project:[0-9]+}/append_files", addContext(handleAppendFiles)).Methods("POST")
	rootRouter.Handle("/projects/{project:[0-9]+}/files/{file:[0-9]+}/update/upload", addContext(handleUploadUpdate)).Methods("POST")
	rootRouter.Handle("/projects/{project:[0-9]+}/files/{file:[0-9]+}/update/apply", addContext(handleApplyUpdate)).Methods("PUT")
	rootRouter.Handle("/projects/{project:[0-9]+}/languages/{language:[0-9]+}/page_settings/search", addContext(handleSearch)).Methods("POST")
	rootRouter.Handle("/projects/{project:[0-9]+}/languages/{language:[0-9]+}/pages/{page:[0-9]+}/segments/milestones/-100/export", addContext(handleExport)).Methods("GET")
	rootRouter.Handle("/file/download", addContext(handleDownload)).Methods("GET")
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type appendFileRequest struct {
	SourceColumns []string        `json:"source_columns"`
	FileName      string          `json:"file_name"`
	VersionTag    string          `json:"version_tag"`
	ID            json.RawMessage `json:"id"`
}

type applyUpdateRequest struct {
	KeepInProject bool            `json:"keep_in_project"`
	NewFileID     json.RawMessage `json:"new_file_id"`
}

type searchRequest struct {
	Status []string `json:"status"`
	Title  string   `json:"title"`
}

type searchPage struct {
	PageID     int64  `json:"page_id"`
	Title      string `json:"title"`
	VersionTag string `json:"version_tag"`
	Completed  bool   `json:"completed"`
}

func handleLogin(c *Context, w http.ResponseWriter, r *http.Request) {
	var request loginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		outputError(c, w, http.StatusBadRequest, "Malformed login request")
		return
	}
	if request.Username != c.State.Username || request.Password != c.State.Password {
		outputError(c, w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	outputJSON(c, w, http.StatusOK, map[string]interface{}{
		"token": c.State.Token,
		"user": map[string]interface{}{
			"email":           request.Username,
			"organization_id": c.State.Project.OrganizationID,
		},
	})
}

func handleGetLanguages(c *Context, w http.ResponseWriter, r *http.Request) {
	outputJSON(c, w, http.StatusOK, c.State.Languages)
}

func handleGetProject(c *Context, w http.ResponseWriter, r *http.Request) {
	if !checkProject(c, w, r) {
		return
	}
	outputJSON(c, w, http.StatusOK, map[string]interface{}{"project": c.State.Project})
}

func handleUploadFile(c *Context, w http.ResponseWriter, r *http.Request) {
	orgID, _ := strconv.ParseInt(mux.Vars(r)["org"], 10, 64)
	projectID, _ := strconv.ParseInt(r.URL.Query().Get("project_id"), 10, 64)
	if orgID != c.State.Project.OrganizationID || projectID != c.State.Project.ID {
		outputError(c, w, http.StatusNotFound, "Project not found")
		return
	}

	u, ok := receiveUpload(c, w, r)
	if !ok {
		return
	}

	outputJSON(c, w, http.StatusOK, map[string]interface{}{
		"result":    "success",
		"upload_id": u.id,
	})
}

func handleUploadUpdate(c *Context, w http.ResponseWriter, r *http.Request) {
	if !checkProject(c, w, r) {
		return
	}
	fileID, _ := strconv.ParseInt(mux.Vars(r)["file"], 10, 64)
	if c.State.file(fileID) == nil {
		outputError(c, w, http.StatusNotFound, "File not found")
		return
	}

	u, ok := receiveUpload(c, w, r)
	if !ok {
		return
	}

	outputJSON(c, w, http.StatusOK, map[string]interface{}{"id": u.id})
}

func receiveUpload(c *Context, w http.ResponseWriter, r *http.Request) (*upload, bool) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		c.Logger.WithError(err).Error("failed to parse multipart upload")
		outputError(c, w, http.StatusBadRequest, "Malformed upload")
		return nil, false
	}
	if r.FormValue("user_key") != c.State.Token {
		outputError(c, w, http.StatusUnauthorized, "Invalid user key")
		return nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		outputError(c, w, http.StatusBadRequest, "File is missing")
		return nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.Logger.WithError(err).Error("failed to read uploaded file")
		w.WriteHeader(http.StatusInternalServerError)
		return nil, false
	}

	u := &upload{
		id:       c.State.newID(),
		fileName: header.Filename,
		content:  content,
	}
	c.State.uploads[u.id] = u
	c.Logger.Debugf("received upload %d of %s", u.id, u.fileName)

	return u, true
}

func handleAppendFiles(c *Context, w http.ResponseWriter, r *http.Request) {
	if !checkProject(c, w, r) {
		return
	}

	var requests []appendFileRequest
	if err := json.NewDecoder(r.Body).Decode(&requests); err != nil {
		outputError(c, w, http.StatusBadRequest, "Malformed append request")
		return
	}

	ids := []int64{}
	for _, request := range requests {
		u, ok := c.State.uploads[parseRawID(request.ID)]
		if !ok {
			outputError(c, w, http.StatusNotFound, "Upload not found")
			return
		}
		f := &File{
			PageID:       c.State.newID(),
			Title:        request.FileName,
			VersionTag:   request.VersionTag,
			Content:      u.content,
			Translations: make(map[string][]byte),
			Completed:    make(map[string]bool),
		}
		c.State.files = append(c.State.files, f)
		ids = append(ids, f.PageID)
	}

	outputJSON(c, w, http.StatusOK, map[string]interface{}{"files_ids": ids})
}

func handleApplyUpdate(c *Context, w http.ResponseWriter, r *http.Request) {
	if !checkProject(c, w, r) {
		return
	}
	fileID, _ := strconv.ParseInt(mux.Vars(r)["file"], 10, 64)
	f := c.State.file(fileID)
	if f == nil {
		outputError(c, w, http.StatusNotFound, "File not found")
		return
	}

	var request applyUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		outputError(c, w, http.StatusBadRequest, "Malformed update request")
		return
	}
	u, ok := c.State.uploads[parseRawID(request.NewFileID)]
	if !ok {
		outputError(c, w, http.StatusNotFound, "Upload not found")
		return
	}

	f.Content = u.content
	f.Completed = make(map[string]bool)

	outputJSON(c, w, http.StatusOK, map[string]interface{}{"files_ids": []int64{f.PageID}})
}

func handleSearch(c *Context, w http.ResponseWriter, r *http.Request) {
	if !checkProject(c, w, r) {
		return
	}
	languageID, _ := strconv.ParseInt(mux.Vars(r)["language"], 10, 64)
	lang, ok := c.State.targetLanguage(languageID)
	if !ok {
		outputError(c, w, http.StatusNotFound, "Language not found")
		return
	}

	var request searchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		outputError(c, w, http.StatusBadRequest, "Malformed search request")
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 100
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	matched := []searchPage{}
	for _, f := range c.State.files {
		if request.Title != "" && request.Title != f.Title {
			continue
		}
		if !matchesStatus(request.Status, f.Completed[lang.Code]) {
			continue
		}
		matched = append(matched, searchPage{
			PageID:     f.PageID,
			Title:      f.Title,
			VersionTag: f.VersionTag,
			Completed:  f.Completed[lang.Code],
		})
	}

	pages := []searchPage{}
	if offset < len(matched) {
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		pages = matched[offset:end]
	}

	outputJSON(c, w, http.StatusOK, map[string]interface{}{
		"meta": map[string]interface{}{
			"paging": map[string]interface{}{
				"total_results": len(matched),
				"total_enabled": len(matched),
			},
		},
		"pages": pages,
	})
}

func matchesStatus(statuses []string, completed bool) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, status := range statuses {
		switch status {
		case "enabled":
			return true
		case "completed":
			if completed {
				return true
			}
		}
	}
	return false
}

func handleExport(c *Context, w http.ResponseWriter, r *http.Request) {
	if !checkProject(c, w, r) {
		return
	}
	vars := mux.Vars(r)
	languageID, _ := strconv.ParseInt(vars["language"], 10, 64)
	pageID, _ := strconv.ParseInt(vars["page"], 10, 64)

	lang, ok := c.State.targetLanguage(languageID)
	if !ok {
		outputError(c, w, http.StatusNotFound, "Language not found")
		return
	}
	f := c.State.file(pageID)
	if f == nil {
		outputError(c, w, http.StatusNotFound, "Page not found")
		return
	}

	token := uuid.NewString()
	c.State.exports[token] = export{pageID: f.PageID, language: lang.Code}

	outputJSON(c, w, http.StatusOK, map[string]interface{}{
		"filename": fmt.Sprintf("%s-%s", lang.Code, f.Title),
		"token":    token,
	})
}

func handleDownload(c *Context, w http.ResponseWriter, r *http.Request) {
	e, ok := c.State.exports[r.URL.Query().Get("token")]
	if !ok || r.URL.Query().Get("filename") == "" {
		outputError(c, w, http.StatusNotFound, "Export not found")
		return
	}
	f := c.State.file(e.pageID)
	if f == nil {
		outputError(c, w, http.StatusNotFound, "Page not found")
		return
	}

	body, ok := f.Translations[e.language]
	if !ok {
		body = f.Content
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func checkProject(c *Context, w http.ResponseWriter, r *http.Request) bool {
	projectID, _ := strconv.ParseInt(mux.Vars(r)["project"], 10, 64)
	if projectID != c.State.Project.ID {
		outputError(c, w, http.StatusNotFound, "Project not found")
		return false
	}
	return true
}

// parseRawID reads an id sent either as a number or as a string.
func parseRawID(raw json.RawMessage) int64 {
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, _ = strconv.ParseInt(s, 10, 64)
	}
	return n
}

// outputJSON is a helper method to write the given data as JSON to the given writer.
//
// It only logs an error if one occurs, rather than returning, since there is no point in trying
// to send a new status code back to the client once the body has started sending.
func outputJSON(c *Context, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		c.Logger.WithError(err).Error("failed to encode result")
	}
}

// outputError writes an error body in the shape the real API uses.
func outputError(c *Context, w http.ResponseWriter, status int, message string) {
	outputJSON(c, w, status, map[string]interface{}{
		"errMessage": message,
		"errCode":    status,
	})
}
