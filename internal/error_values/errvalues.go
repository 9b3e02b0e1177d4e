package errorvalues

import "errors"

var (
	ErrUserNotFound      = errors.New("user doesn't exists")
	ErrHabitNotFound     = errors.New("habit doesn't exists or isn't owned by user")
	ErrInvalidHabitName  = errors.New("habit name length out of range after trimming")
	ErrUnknownFrequency  = errors.New("unknown habit frequency")
	ErrStorage           = errors.New("persisting data failed")
	ErrInvalidToken      = errors.New("invalid auth token")
	ErrWrongCredentials  = errors.New("wrong admin credentials")
	ErrNoActiveWizard    = errors.New("no habit creation in progress")
	ErrUnexpectedMessage = errors.New("message doesn't match current wizard step")
)
