// Package webui serves the local drag-and-drop front end. A browser posts a
// video plus conversion options as multipart form data; the server runs the
// same converter the CLI uses and streams the finished GIF back as a
// download. It is meant for loopback use only and carries no authentication.
package webui
