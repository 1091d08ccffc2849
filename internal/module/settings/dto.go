package settings

// KeyValue is the body of a single-setting read or write.
type KeyValue struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}
