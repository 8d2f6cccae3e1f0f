package model

// Folder is the top level prefix an image is stored under
type Folder string

const (
	FolderProfiles  Folder = "profiles"
	FolderMarkets   Folder = "markets"
	FolderProducts  Folder = "products"
	FolderTemplates Folder = "templates"
)

// Folders lists every prefix the orphan sweep walks
var Folders = []Folder{FolderProfiles, FolderMarkets, FolderProducts, FolderTemplates}

// File is an uploaded image read fully into memory
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
