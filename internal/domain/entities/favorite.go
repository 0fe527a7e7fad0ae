package entities

// Favorite представляет связь "пользователь отметил заметку".
// Составной идентификатор (UserID, NoteID) уникален: существование
// строки и есть признак "в избранном".
type Favorite struct {
	UserID int64 `json:"user_id"`
	NoteID int64 `json:"note_id"`
}
