package deactivate_template

import "context"

type TemplateService interface {
	Deactivate(ctx context.Context, templateID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
