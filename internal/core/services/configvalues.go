package services

// raw returns the stored value for key, or nil.
func (s *SettingsService) raw(key string) any {
	v, _ := s.configStore.Get(key)
	return v
}

func (s *SettingsService) rawString(key string) string {
	v, _ := s.raw(key).(string)
	return v
}

// toInt accepts the integer shapes stores produce: int from memory, int64
// from TOML. Floats are truncated.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// toFloat widens integers.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
