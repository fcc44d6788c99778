// Package file provides the TOML configuration file adapter.
//
// Keys are addressed in dot notation ("pinecone.index_name") and persisted
// as nested TOML tables:
//
//	[pinecone]
//	index_name = "it-support"
//
// The file lives at $SOPS_AI_HOME/config.toml, or ~/.sops-ai/config.toml.
package file
