package op

// New builds an [Op] for the engine. A nil config gets the defaults.
func New(cfg *Config, engine Engine) (*Op, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	op := &Op{config: cfg, engine: engine}
	if err := op.setupDb(); err != nil {
		return nil, err
	}

	return op, nil
}
