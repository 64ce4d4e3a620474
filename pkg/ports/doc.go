/*
Package ports defines the driven ports (interfaces) of the converter.

These interfaces decouple the conversion facade from external implementations,
allowing encoded documents to be cached in memory or in a shared backend.

# Key Interfaces

  - DocumentCache: Stores encoded documents by content key (e.g., Memory or Redis).
*/
package ports
