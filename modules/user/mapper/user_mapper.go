package mapper

import (
	"dingdong-api/modules/user/dto"
	"dingdong-api/modules/user/entity"
)

func ToUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Username:     user.Username,
		ProfileColor: user.ProfileColor,
		IsAdmin:      user.IsAdmin,
	}
}

func ToUserResponseList(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *ToUserResponse(&users[i]))
	}
	return responses
}
