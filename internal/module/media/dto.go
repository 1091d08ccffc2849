package media

// RenameRequest represents the input for renaming a media item.
type RenameRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// FoldersResponse lists the distinct media folders.
type FoldersResponse struct {
	Folders []string `json:"folders"`
}
