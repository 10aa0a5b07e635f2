package lysa

import "regexp"

// meshExt suffixes mesh ids in both the scene document and the manifest;
// the two must agree for the loader to resolve the reference.
const meshExt = ".mesh"

// meshDuplicatePattern matches the host tool's trailing duplicate suffix
// (".001", ".002", ...) on object names.
var meshDuplicatePattern = regexp.MustCompile(`\.\d+$`)

// MeshKey returns the mesh resource key for an object name. With reconcile
// on, instances like "Rock.001" and "Rock.002" share the key "Rock".
func MeshKey(name string, reconcile bool) string {
	if reconcile {
		return meshDuplicatePattern.ReplaceAllString(name, "")
	}
	return name
}

// BuildNodeDocument builds the node document for obj and its subtree,
// depth-first in child order.
//
// Mesh objects get a mesh-proxy child referencing the shared mesh resource;
// their children nest under the proxy, not the node itself. Light objects
// keep the child layout of any other non-mesh object but their class and
// properties are replaced by the light block.
func BuildNodeDocument(obj *SceneObject, opts ExportOptions) (*NodeDocument, error) {
	props, err := ResolveProperties(obj)
	if err != nil {
		return nil, err
	}
	node := &NodeDocument{
		ID:         obj.Name,
		Class:      ResolveClass(obj),
		Properties: props,
	}
	if obj.Kind == KindMesh {
		node.Child = &ChildRef{
			ID:        MeshKey(obj.Name, opts.ReconcileMeshNames) + meshExt,
			Duplicate: "true",
		}
		for _, c := range obj.Children {
			child, err := BuildNodeDocument(c, opts)
			if err != nil {
				return nil, err
			}
			node.Child.Children = append(node.Child.Children, child)
		}
	} else {
		for _, c := range obj.Children {
			child, err := BuildNodeDocument(c, opts)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
	}
	if obj.Kind == KindLight {
		node.Class, node.Properties = resolveLight(obj)
	}
	return node, nil
}

// CollectResources appends one manifest entry per mesh in obj's subtree,
// walking the full hierarchy in pre-order. Paths join ancestor names with
// "/" and keep the pre-reconciliation names: they address the mesh inside
// the exported binary, which retains per-instance names.
func CollectResources(entries []ResourceEntry, obj *SceneObject, parentPath string) []ResourceEntry {
	path := obj.Name
	if parentPath != "" {
		path = parentPath + "/" + obj.Name
	}
	if obj.Kind == KindMesh {
		entries = append(entries, ResourceEntry{
			ID:       obj.Name + meshExt,
			Type:     EntryMesh,
			Resource: ResourcesID,
			Path:     path,
		})
	}
	for _, c := range obj.Children {
		entries = CollectResources(entries, c, path)
	}
	return entries
}
