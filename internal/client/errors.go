package client

import "errors"

var ErrClipboardUnavailable = errors.New("clipboard unavailable")
