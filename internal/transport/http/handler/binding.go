package handler

import (
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

const somethingWentWrong = "Something went wrong"

var setupValidatorOnce sync.Once

// SetupValidator makes validation errors report wire field names and adds
// the notblank rule. Safe to call more than once.
func SetupValidator() {
	setupValidatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(wireName)
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	})
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func internalError(c *gin.Context, logger *slog.Logger, op string, err error) {
	logger.ErrorContext(c.Request.Context(), op+" failed",
		slog.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
		slog.String("path", c.FullPath()),
		slog.Any("error", err),
	)
	response.Message(c, 500, somethingWentWrong)
}
