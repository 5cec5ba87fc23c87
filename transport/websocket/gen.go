package websocket

import (
	"crypto/sha1" //nolint:gosec // RFC 6455 mandates SHA-1 for the handshake
	"encoding/base64"
)

// Static GUID defined in RFC 6455 for WebSocket.
const websocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// GenerateAcceptKey - generates the Sec-WebSocket-Accept value for the
// handshake.
func GenerateAcceptKey(key string) string {
	h := sha1.New() //nolint:gosec // see above

	h.Write([]byte(key + websocketGUID))

	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}
