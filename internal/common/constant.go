package common

// AccessTokenHeaderName is the HTTP header carrying the backup token on
// config and board requests.
const AccessTokenHeaderName = "X-Access-Token"

// File names of the on-disk layout.
const (
	DefaultTokenFile = "tokens.db"
	AppConfigFile    = "app-config.json"
	MetaFile         = "meta.json"
	DeletedMarker    = "board-deleted"
)

// DeletedMarkerContent is written into DeletedMarker on soft delete.
const DeletedMarkerContent = "true"
