package mapper

import (
	"dingdong-api/modules/workspace/dto"
	"dingdong-api/modules/workspace/entity"
)

func ToWorkspaceResponse(workspace *entity.Workspace) *dto.WorkspaceResponse {
	return &dto.WorkspaceResponse{
		ID:      workspace.ID,
		Title:   workspace.Title,
		OrderNo: workspace.OrderNo,
	}
}

func ToWorkspaceResponseList(workspaces []entity.Workspace) []dto.WorkspaceResponse {
	responses := make([]dto.WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		responses = append(responses, *ToWorkspaceResponse(&workspaces[i]))
	}
	return responses
}
