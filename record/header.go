package record

import (
	"github.com/zeroed-tech/viewstate-decoder/cursor"
	"github.com/zeroed-tech/viewstate-decoder/format"
)

func parseHeader(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.SerializationHeader); err != nil {
		return nil, err
	}

	rootId, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	headerId, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	major, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	minor, err := c.ReadI32()
	if err != nil {
		return nil, err
	}

	return Header{RootId: rootId, HeaderId: headerId, MajorVersion: major, MinorVersion: minor}, nil
}

func parseMessageEnd(c *cursor.Cursor) (Record, error) {
	if err := expectTag(c, format.MessageEnd); err != nil {
		return nil, err
	}

	return MessageEnd{}, nil
}
