package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token,omitempty"`
	Body    interface{} `json:"body"`
}

func Message(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, MessageResponse{Message: message})
}

func Data(c *gin.Context, httpStatus int, data interface{}) {
	c.JSON(httpStatus, data)
}

// BindError answers 400 with a field -> message map. messages is keyed by
// "field.tag"; rules without an entry fall back to the validator text.
func BindError(c *gin.Context, err error, messages map[string]string) {
	c.JSON(400, FieldErrors(err, messages))
}

func FieldErrors(err error, messages map[string]string) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": "invalid request payload"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			out[fe.Field()] = msg
			continue
		}
		out[fe.Field()] = fe.Error()
	}
	return out
}
