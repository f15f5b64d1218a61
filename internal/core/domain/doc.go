// Package domain contains the core entities of the source manager:
// regions, shared source records and their documents, and the canonical
// project record. Entities are plain data with invariant-preserving
// methods; persistence lives in the adapters.
package domain
