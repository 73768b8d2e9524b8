package port

type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	Rel     string // slash-separated, relative to the walked root
	ModTime int64
	Size    int64
}
