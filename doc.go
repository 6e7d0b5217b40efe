// Package easel is the geometry and synchronization core of a vector design
// canvas. It owns the document tree (frames, shapes, text, images and
// references), resolves flex-style auto layout into absolute geometry, and
// keeps a retained scene of render objects in sync with the document.
//
// The document side is a DocumentStore of flat Node values; the render side
// is a Surface of Objects. A Syncer mirrors store changes onto the surface,
// and a Canvas ties the two together with gesture write-back, reparenting,
// drag reordering, snapping and undo batching.
package easel
