// errors/template_errors.go
package errors

import "errors"

var ErrTemplateNotFound = errors.New("template not found")
