package entity

type CarRequest struct {
	Number string `json:"number" validate:"required,max=20"`
	Brand  string `json:"brand" validate:"required,max=100"`
	Color  string `json:"color" validate:"required,max=50"`
	Year   int    `json:"year" validate:"required,gte=1950,lte=2100"`
}

type CreateDriverRequest struct {
	Name  string       `json:"name" validate:"required,min=2,max=255"`
	Phone string       `json:"phone" validate:"required,e164"`
	Email string       `json:"email" validate:"required,email"`
	Sex   Sex          `json:"sex" validate:"required,oneof=MALE FEMALE"`
	Cars  []CarRequest `json:"cars" validate:"omitempty,dive"`
}

// UpdateDriverRequest is a partial update: empty fields keep their value,
// a non-nil Cars replaces the whole fleet.
type UpdateDriverRequest struct {
	Name  string        `json:"name" validate:"omitempty,min=2,max=255"`
	Phone string        `json:"phone" validate:"omitempty,e164"`
	Email string        `json:"email" validate:"omitempty,email"`
	Sex   Sex           `json:"sex" validate:"omitempty,oneof=MALE FEMALE"`
	Cars  *[]CarRequest `json:"cars" validate:"omitempty,dive"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}
