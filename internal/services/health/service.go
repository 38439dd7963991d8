package health

// Service encapsulates health-related checks.
type Service struct {
	StoreType string
	QueueType string
	Database  bool
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{}
}

// Status returns a simple health payload with the active backends.
func (s *Service) Status() map[string]any {
	out := map[string]any{"ok": true}
	if s.StoreType != "" {
		out["object_store"] = s.StoreType
	}
	if s.QueueType != "" {
		out["queue"] = s.QueueType
	}
	out["database"] = s.Database
	return out
}
