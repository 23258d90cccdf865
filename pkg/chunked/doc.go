// Package chunked generates the settings document incrementally into
// caller-supplied buffers of bounded size.
//
// A Context is a resumable cursor over a Page. Each Fill call resumes where
// the previous one stopped, writes as many whole units as fit and returns the
// number of bytes written; zero means the document is complete. Because units
// are never split and cursors only advance past written data, the
// concatenated output is the same for every buffer size of at least
// Page.MinBufferSize.
package chunked
