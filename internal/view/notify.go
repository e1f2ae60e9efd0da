package view

// Notifier surfaces blocking, per-action messages to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// NotifierFuncs adapts plain functions to Notifier. Nil funcs are skipped.
type NotifierFuncs struct {
	OnSuccess func(string)
	OnFailure func(string)
}

func (n NotifierFuncs) Success(msg string) {
	if n.OnSuccess != nil {
		n.OnSuccess(msg)
	}
}

func (n NotifierFuncs) Failure(msg string) {
	if n.OnFailure != nil {
		n.OnFailure(msg)
	}
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }
