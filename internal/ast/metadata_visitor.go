package ast

// MetadataVisitor provides utilities for working with metadata across the AST
type MetadataVisitor struct {
	tracker    *NodeTracker
	sourceText string
}

// NewMetadataVisitor creates a new metadata visitor
func NewMetadataVisitor(sourceText string, tracker *NodeTracker) *MetadataVisitor {
	if tracker == nil {
		tracker = NewNodeTracker()
	}
	return &MetadataVisitor{
		tracker:    tracker,
		sourceText: sourceText,
	}
}

// Tracker returns the tracker IDs are drawn from
func (mv *MetadataVisitor) Tracker() *NodeTracker {
	return mv.tracker
}

// AssignMetadata assigns metadata to a node and all its children
func (mv *MetadataVisitor) AssignMetadata(node Node, parentID NodeID) {
	if node == nil {
		return
	}

	nodeID := mv.tracker.GenerateID()

	start := node.NodePos()
	end := node.NodeEndPos()

	metadata := &Metadata{
		NodeID:     nodeID,
		Source:     CreateSourceRange(start, end),
		SourceText: mv.extractSourceText(start, end),
		ParentID:   parentID,
	}

	node.SetMetadata(metadata)
	mv.tracker.SetMetadata(nodeID, metadata)

	for _, child := range Children(node) {
		mv.AssignMetadata(child, nodeID)
	}
}

// extractSourceText extracts the source text between two positions
func (mv *MetadataVisitor) extractSourceText(start, end Position) string {
	if mv.sourceText == "" {
		return ""
	}

	if start.Offset < 0 || end.Offset < 0 || start.Offset > len(mv.sourceText) || end.Offset > len(mv.sourceText) {
		return ""
	}

	if start.Offset > end.Offset {
		return ""
	}

	return mv.sourceText[start.Offset:end.Offset]
}

// AssignGeneratedMetadata gives IDs to every node of a synthesized subtree
// that does not have one yet
func AssignGeneratedMetadata(tracker *NodeTracker, node Node, parentID NodeID) {
	if node == nil {
		return
	}
	id := ID(node)
	if id == 0 {
		id = tracker.Track(node, parentID)
	}
	for _, child := range Children(node) {
		AssignGeneratedMetadata(tracker, child, id)
	}
}

// Renumber gives every node of the tree a fresh ID from tracker, keeping
// its source information. Units parsed with separate trackers are
// renumbered into one ID space before they are rewritten together.
func Renumber(tracker *NodeTracker, node Node, parentID NodeID) {
	if node == nil {
		return
	}
	meta := node.GetMetadata()
	if meta == nil {
		meta = &Metadata{Source: CreateSourceRange(node.NodePos(), node.NodeEndPos())}
	} else {
		copied := *meta
		meta = &copied
	}
	meta.NodeID = tracker.GenerateID()
	meta.ParentID = parentID
	node.SetMetadata(meta)
	tracker.SetMetadata(meta.NodeID, meta)

	for _, child := range Children(node) {
		Renumber(tracker, child, meta.NodeID)
	}
}
