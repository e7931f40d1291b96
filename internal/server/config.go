package server

// Config controls the unified server.
type Config struct {
	// Addr is the listen address, for example ":12345".
	Addr string

	// FilesDir is the directory /file shares are read from.
	FilesDir string

	// ReadBufferSize caps the size of one inbound TCP message.
	ReadBufferSize int

	// OutgoingBuffer is the per-client send queue length.
	OutgoingBuffer int
}

// DefaultConfig returns the configuration used when flags are absent.
func DefaultConfig() Config {
	return Config{
		Addr:           ":12345",
		FilesDir:       ".",
		ReadBufferSize: 2048,
		OutgoingBuffer: 16,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.FilesDir == "" {
		c.FilesDir = def.FilesDir
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = def.ReadBufferSize
	}
	if c.OutgoingBuffer <= 0 {
		c.OutgoingBuffer = def.OutgoingBuffer
	}
	return c
}
