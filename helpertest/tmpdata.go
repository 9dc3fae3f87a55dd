package helpertest

import (
	"bufio"
	"os"
	"path/filepath"
)

type TmpFolder struct {
	Path   string
	Error  error
	prefix string
}

type TmpFile struct {
	Path   string
	Error  error
	Folder *TmpFolder
}

func NewTmpFolder(prefix string) *TmpFolder {
	ipref := prefix

	if len(ipref) == 0 {
		ipref = "dnsvantage"
	}

	path, err := os.MkdirTemp("", ipref)

	return &TmpFolder{
		Path:   path,
		Error:  err,
		prefix: ipref,
	}
}

func (tf *TmpFolder) Clean() error {
	if len(tf.Path) > 0 {
		return os.RemoveAll(tf.Path)
	}

	return nil
}

func (tf *TmpFolder) CreateStringFile(name string, lines ...string) *TmpFile {
	f, err := os.Create(filepath.Join(tf.Path, name))
	if err != nil {
		return &TmpFile{Error: err, Folder: tf}
	}

	first := true
	w := bufio.NewWriter(f)

	for _, l := range lines {
		if first {
			first = false
		} else {
			_, err = w.WriteString("\n")
			if err != nil {
				break
			}
		}

		_, err = w.WriteString(l)
		if err != nil {
			break
		}
	}

	if err == nil {
		err = w.Flush()
	}

	if cerr := f.Close(); err == nil {
		err = cerr
	}

	return &TmpFile{
		Path:   filepath.Join(tf.Path, name),
		Error:  err,
		Folder: tf,
	}
}
