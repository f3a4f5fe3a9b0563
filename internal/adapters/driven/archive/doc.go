// Package archive decodes conversation exports.
//
// The reader accepts the conversations.json file itself or the export zip
// that contains it. Zip input is detected by its magic number, not by the
// file extension.
package archive
