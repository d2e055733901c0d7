package record

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/format"
)

func parseBinaryLibrary(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.BinaryLibrary); err != nil {
		return nil, err
	}

	libraryId, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	name, err := c.ReadVarString()
	if err != nil {
		return nil, err
	}

	return BinaryLibrary{LibraryId: libraryId, LibraryName: name}, nil
}

func parseBinaryObjectString(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.BinaryObjectString); err != nil {
		return nil, err
	}

	objectId, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	s, err := c.ReadVarString()
	if err != nil {
		return nil, err
	}

	return BinaryObjectString{ObjectId: objectId, Value: s}, nil
}
