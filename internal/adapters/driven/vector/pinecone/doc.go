// Package pinecone provides the serverless Pinecone index adapter.
//
// A Provisioner resolves index names to hosts and creates missing indexes.
// A Store is a data-plane connection to one index, serving upserts, similarity
// queries, stats and prefix listing. Record metadata is carried as a protobuf
// Struct, so integers read back from the index arrive as float64.
package pinecone
