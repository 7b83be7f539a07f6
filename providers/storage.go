package providers

// IEntryStore defines persisted config entries storage.
type IEntryStore interface {
	All() []*Entry
	Get(uniqueID string) (*Entry, bool)
	HasHost(host string) bool
	Add(*Entry) error
	Remove(uniqueID string) error
}

// Entry is a persisted vacuum record created by the setup flow.
type Entry struct {
	UniqueID string `yaml:"uniqueId" json:"unique_id" validate:"required"`
	Host     string `yaml:"host" json:"host" validate:"required,host"`
	Token    string `yaml:"token" json:"-" validate:"required,len=32"`
	Name     string `yaml:"name" json:"name" default:"Viomi SE"`
}
