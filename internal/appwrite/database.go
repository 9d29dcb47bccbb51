package appwrite

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// DocumentList is a page of documents of type T plus the total number of
// documents matching the queries.
type DocumentList[T any] struct {
	Total     int `json:"total"`
	Documents []T `json:"documents"`
}

// createDocumentRequest is the wire envelope for document creation.
type createDocumentRequest struct {
	DocumentID  string   `json:"documentId"`
	Data        any      `json:"data"`
	Permissions []string `json:"permissions,omitempty"`
}

// updateDocumentRequest is the wire envelope for partial document updates.
type updateDocumentRequest struct {
	Data any `json:"data"`
}

func collectionPath(databaseID string, collectionID string) string {
	return "/databases/" + databaseID + "/collections/" + collectionID + "/documents"
}

// ListDocuments returns documents of collection matching the given queries.
// Documents are decoded into T; include an `$id`-tagged field in T to
// capture document ids.
func ListDocuments[T any](ctx context.Context, c *Client, databaseID string, collectionID string, queries ...string) (*DocumentList[T], error) {
	q := url.Values{}
	for _, query := range queries {
		q.Add("queries[]", query)
	}
	var list DocumentList[T]
	if err := c.do(ctx, http.MethodGet, collectionPath(databaseID, collectionID), q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateDocument stores data as a new document with a generated unique id
// and the given permissions, returning the decoded created document.
func CreateDocument[T any](ctx context.Context, c *Client, databaseID string, collectionID string, data any, permissions ...string) (*T, error) {
	body := createDocumentRequest{
		DocumentID:  uuid.NewString(),
		Data:        data,
		Permissions: permissions,
	}
	var doc T
	if err := c.do(ctx, http.MethodPost, collectionPath(databaseID, collectionID), nil, body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// UpdateDocument applies a partial update to an existing document.
func UpdateDocument[T any](ctx context.Context, c *Client, databaseID string, collectionID string, documentID string, data any) (*T, error) {
	var doc T
	path := collectionPath(databaseID, collectionID) + "/" + documentID
	if err := c.do(ctx, http.MethodPatch, path, nil, updateDocumentRequest{Data: data}, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DeleteDocument removes a document by id.
func (c *Client) DeleteDocument(ctx context.Context, databaseID string, collectionID string, documentID string) error {
	path := collectionPath(databaseID, collectionID) + "/" + documentID
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Query builders. The service expects queries in its string syntax, e.g.
// equal("userId", ["abc"]).

// QueryEqual matches documents whose attribute equals value.
func QueryEqual(attribute string, value any) string {
	encoded, _ := json.Marshal([]any{value})
	return fmt.Sprintf("equal(%q, %s)", attribute, encoded)
}

// QueryOrderDesc sorts results by attribute, newest-first for timestamps.
func QueryOrderDesc(attribute string) string {
	return fmt.Sprintf("orderDesc(%q)", attribute)
}

// QueryLimit caps the number of returned documents.
func QueryLimit(n int) string {
	return fmt.Sprintf("limit(%d)", n)
}

// Permission builders scoping document access to a role.

// RoleUser names the role of a single authenticated user.
func RoleUser(userID string) string { return "user:" + userID }

func PermissionRead(role string) string   { return fmt.Sprintf("read(%q)", role) }
func PermissionUpdate(role string) string { return fmt.Sprintf("update(%q)", role) }
func PermissionDelete(role string) string { return fmt.Sprintf("delete(%q)", role) }
func PermissionWrite(role string) string  { return fmt.Sprintf("write(%q)", role) }
