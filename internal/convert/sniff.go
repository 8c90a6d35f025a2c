package convert

import (
	"bytes"
	"io"
	"os"
)

// Leading-byte signatures used to determine a file's true container format
// independent of its extension.
var (
	rtfMagic  = []byte(`{\rtf`)
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipMagic  = []byte{0x50, 0x4B} // "PK"
)

// sniffHeader reads the first 8 bytes of the staged file. A file shorter
// than 8 bytes yields whatever prefix exists.
func sniffHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header := make([]byte, 8)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return header[:n], nil
}

func isRTF(header []byte) bool {
	return bytes.HasPrefix(header, rtfMagic)
}

func isOLE2(header []byte) bool {
	return bytes.HasPrefix(header, ole2Magic)
}

func isZip(header []byte) bool {
	return bytes.HasPrefix(header, zipMagic)
}

// zipFamilyExtensions are the modern Office formats that must be ZIP
// containers. An OLE2 header on one of these means the document is wrapped
// in an encryption container, i.e. password-protected. Natively-OLE2
// formats (.xls, .doc) are deliberately absent: OLE2 there is normal.
var zipFamilyExtensions = map[string]bool{
	".xlsx": true,
	".pptx": true,
	".docx": true,
}

// isEncryptedOffice reports whether the header/extension combination points
// at a password-encrypted modern Office document.
func isEncryptedOffice(ext string, header []byte) bool {
	return zipFamilyExtensions[ext] && isOLE2(header)
}
