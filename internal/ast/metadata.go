package ast

import "fmt"

// NodeID is a unique identifier for each AST node to track it through compilation
type NodeID uint32

// SourceRange represents a range in the source code
type SourceRange struct {
	Start Position
	End   Position
}

// Metadata contains debugging and compilation information for AST nodes
type Metadata struct {
	// Unique identifier for this AST node
	NodeID NodeID

	// Source location information
	Source SourceRange

	// Original source text for this node (useful for debugging)
	SourceText string

	// Parent node ID (0 if root)
	ParentID NodeID

	// Generated marks nodes synthesized by a rewrite rather than parsed
	Generated bool
}

// NodeTracker manages node IDs and metadata
type NodeTracker struct {
	nextID   NodeID
	metadata map[NodeID]*Metadata
}

// NewNodeTracker creates a new node tracker
func NewNodeTracker() *NodeTracker {
	return &NodeTracker{
		nextID:   1, // Start at 1, reserve 0 for "no parent"
		metadata: make(map[NodeID]*Metadata),
	}
}

// GenerateID creates a new unique node ID
func (nt *NodeTracker) GenerateID() NodeID {
	id := nt.nextID
	nt.nextID++
	return id
}

// SetMetadata associates metadata with a node ID
func (nt *NodeTracker) SetMetadata(id NodeID, meta *Metadata) {
	nt.metadata[id] = meta
}

// GetMetadata retrieves metadata for a node ID
func (nt *NodeTracker) GetMetadata(id NodeID) *Metadata {
	return nt.metadata[id]
}

// GetAllMetadata returns all metadata (useful for debugging)
func (nt *NodeTracker) GetAllMetadata() map[NodeID]*Metadata {
	return nt.metadata
}

// CreateSourceRange creates a SourceRange from start and end positions
func CreateSourceRange(start, end Position) SourceRange {
	return SourceRange{Start: start, End: end}
}

// Contains checks if a position is within this source range
func (sr SourceRange) Contains(pos Position) bool {
	return sr.Start.Offset <= pos.Offset && pos.Offset <= sr.End.Offset
}

// String returns a human-readable representation of the source range
func (sr SourceRange) String() string {
	if sr.Start.Line == sr.End.Line {
		return fmt.Sprintf("%s:%d:%d-%d", sr.Start.Filename, sr.Start.Line, sr.Start.Column, sr.End.Column)
	}
	return fmt.Sprintf("%s:%d:%d-%d:%d", sr.Start.Filename, sr.Start.Line, sr.Start.Column, sr.End.Line, sr.End.Column)
}

// String returns a human-readable representation of metadata
func (m *Metadata) String() string {
	return fmt.Sprintf("NodeID:%d Source:%s Parent:%d", m.NodeID, m.Source.String(), m.ParentID)
}

// Track assigns a fresh ID to a node that was created after parsing
func (nt *NodeTracker) Track(node Node, parentID NodeID) NodeID {
	id := nt.GenerateID()
	meta := &Metadata{
		NodeID:    id,
		Source:    CreateSourceRange(node.NodePos(), node.NodeEndPos()),
		ParentID:  parentID,
		Generated: true,
	}
	node.SetMetadata(meta)
	nt.SetMetadata(id, meta)
	return id
}

// ID returns the node's ID, or 0 when the node carries no metadata
func ID(node Node) NodeID {
	if node == nil {
		return 0
	}
	meta := node.GetMetadata()
	if meta == nil {
		return 0
	}
	return meta.NodeID
}
