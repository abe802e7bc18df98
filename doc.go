// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package byteview provides View, a small value type referencing a span of
// bytes stored elsewhere: a pointer to the first byte plus a length.
//
// A View does not own the bytes it refers to. Constructing one never copies
// or allocates, and discarding one never frees. The referenced memory must
// remain live and unmodified for as long as the view (or any view derived
// from it) is in use; a view over recycled or manually freed memory silently
// reads whatever is there now. Views over memory owned by the Go runtime
// keep that memory reachable, but views over memory from the manual package
// do not.
//
// Views are the currency between components that share large immutable
// buffers, such as a block cache handing out references into cached blocks
// or an iterator exposing the current key. Copying a View copies two words,
// never the underlying data. Use Materialize to obtain an owned copy of the
// bytes themselves.
//
// Read-only operations on a View are safe for concurrent use without
// coordination. The narrowing operations (Clear, RemovePrefix) mutate the
// view value and require external synchronization if it is shared.
package byteview
