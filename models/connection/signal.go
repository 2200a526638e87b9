package connection

const (
	CodeSessionID uint8 = iota
	CodeGameNotFound

	// Sent on connect and after every change to either board
	CodeBoardUpdate

	// Watchers may ask for the latest board at any time
	CodeRequestBoard
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
