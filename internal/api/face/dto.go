package face

import "FaceVerify/internal/entity"

type VerifyFaceRequest struct {
	Image *string `json:"image" validate:"required"`
}

type RegisterFaceRequest struct {
	Image  *string        `json:"image" validate:"required"`
	Rollno *entity.Rollno `json:"rollno"`
}

type VerifyFaceResponse struct {
	Success bool   `json:"success"`
	Rollno  *int64 `json:"rollno,omitempty"`
	Message string `json:"message,omitempty"`
}

type RegisterFaceResponse struct {
	Success bool   `json:"success"`
	FaceID  string `json:"faceId"`
}

// VerifyResult is the outcome of a verification; Rollno is meaningful only
// when Recognized is true.
type VerifyResult struct {
	Recognized bool
	Rollno     int64
	FaceCount  int
	KnownCount int
}

func (r VerifyResult) Response() VerifyFaceResponse {
	if !r.Recognized {
		return VerifyFaceResponse{Success: false, Message: MessageNotRecognized}
	}
	rollno := r.Rollno
	return VerifyFaceResponse{Success: true, Rollno: &rollno}
}
