package publisher

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"
)

// sasTokenTTL is the lifetime of a generated shared access signature.
const sasTokenTTL = time.Hour

// sasToken builds a SharedAccessSignature authorization value for uri. The
// signature is an HMAC-SHA256 over the URL-encoded uri and the unix expiry,
// joined by a newline, keyed by the shared access key.
func sasToken(uri, keyName, key string, expiry time.Time) string {
	encoded := url.QueryEscape(uri)
	se := expiry.Unix()

	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(fmt.Sprintf("%s\n%d", encoded, se)))
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf(
		"SharedAccessSignature sr=%s&sig=%s&se=%d&skn=%s",
		encoded, url.QueryEscape(signature), se, keyName,
	)
}
