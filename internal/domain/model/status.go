package model

// Status messages reported to the operator.
const (
	MessageAlreadyExists = "API key already exists"
	MessageCreated       = "API key created"
	MessageFailed        = "API failed to create"
)

// Status is the terminal result of a provisioning run.
type Status struct {
	Success bool      `json:"success" yaml:"success"`
	Message string    `json:"message" yaml:"message"`
	State   State     `json:"state" yaml:"state"`
	Kind    ErrorKind `json:"kind,omitempty" yaml:"kind,omitempty"`
}
