// Package export turns a page plan into files: one PNG per page or a
// single PDF holding every page. Finished files go to a Sink, either a
// local directory or an S3 bucket.
package export
