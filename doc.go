/*
Package ripple facilitates interaction with an XRP Ledger (rippled) node,
compiling high-level payment intents into protocol-exact transaction
objects and turning raw ripple_path_find results into usable, filtered
route sets.

The intent compilers and the path-find request builder are pure and
synchronous; network access is confined to the WebSocket client, which
the core only ever touches through the narrow Requester interface.
Signing and binary wire serialization are deliberately not implemented
here.
*/

package ripple
