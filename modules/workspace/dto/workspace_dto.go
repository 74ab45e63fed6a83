package dto

type WorkspaceResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	OrderNo int    `json:"order_no"`
}

type CreateWorkspaceRequest struct {
	Title string `json:"title"`
}

// UpdateWorkspaceRequest carries partial updates; nil fields are untouched.
type UpdateWorkspaceRequest struct {
	Title   *string `json:"title"`
	OrderNo *int    `json:"order_no"`
}
