package providers

// ICronProvider schedules periodic jobs such as vacuum polling.
// Job IDs are only meaningful for the provider which returned them.
type ICronProvider interface {
	AddFunc(spec string, cmd func()) (int, error)
	RemoveFunc(id int)
}
