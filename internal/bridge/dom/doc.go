// Package dom abstracts the hosting page's browser surface behind small
// capability interfaces so the frame bridge never touches globals directly.
//
// The bridge only needs four things from the page: insert the editor frame
// into a marker container, submit the auth hand-off form targeting the frame,
// write the document title, and observe inbound postMessage traffic. Each is
// an interface here; production implementations forward directives over the
// relay channel while tests substitute in-memory fakes.
package dom
