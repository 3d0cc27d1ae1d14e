// Package relay moves captured images to the cloud image host.
//
// Handler is the server side of POST /api/upload. It accepts either a
// multipart "file" field or a JSON body carrying a base64 data URL, keeps the
// payload in memory, and forwards it to an ImageHost. Both variants answer
// with the canonical "url" field.
//
// Client is the caller side used by the classification pipeline. It posts an
// image to the relay with the configured transport strategy and returns the
// hosted URL, or an *UploadError.
package relay
