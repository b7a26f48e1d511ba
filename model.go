package squall

// InitInput carries the initial terminal dimensions into Model.Init.
type InitInput struct {
	Width, Height int
}

// Model is the application contract. A Program owns exactly one live
// model value at a time: Init and Update consume the current snapshot
// and return the next one, optionally with a command to schedule.
//
// Init and Update must not block; long-running work belongs in an
// Async command. View is a pure projection of the model and is called
// exactly once per completed update cycle. A model receiving a message
// type it does not recognize should return itself unchanged with a nil
// command.
type Model interface {
	// Init is called once before the event loop starts.
	Init(input InitInput) (Model, Cmd)

	// Update is called once per message and returns the next snapshot.
	Update(msg Msg) (Model, Cmd)

	// View renders the model to a frame for the backend.
	View() string
}
