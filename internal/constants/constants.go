package constants

import "time"

var Store = struct {
	SaveDebounce    time.Duration
	CorruptedSuffix string
	TempSuffix      string
}{
	SaveDebounce:    5 * time.Second,
	CorruptedSuffix: ".corrupted",
	TempSuffix:      ".tmp",
}

var View = struct {
	DefaultTimeout time.Duration
}{
	DefaultTimeout: 3 * time.Minute,
}

var Playlist = struct {
	MaxItems    int
	PageSize    int64
	CacheTTL    time.Duration
	MaxNotation int
	MaxNotes    int
	MaxNoteLine int
}{
	MaxItems:    200,
	PageSize:    50,
	CacheTTL:    10 * time.Minute,
	MaxNotation: 500,
	MaxNotes:    300,
	MaxNoteLine: 200,
}

var Limits = struct {
	EmbedTitle       int
	EmbedDescription int
	EmbedFieldName   int
	EmbedFieldValue  int
	ButtonLabel      int
	MessageContent   int
	NotationPreview  int
	NotesPreview     int
}{
	EmbedTitle:       256,
	EmbedDescription: 4000,
	EmbedFieldName:   200,
	EmbedFieldValue:  1000,
	ButtonLabel:      80,
	MessageContent:   2000,
	NotationPreview:  800,
	NotesPreview:     150,
}

var Redis = struct {
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxRetries   int
	PoolSize     int
}{
	DialTimeout:  5 * time.Second,
	ReadTimeout:  3 * time.Second,
	WriteTimeout: 3 * time.Second,
	MaxRetries:   3,
	PoolSize:     10,
}
