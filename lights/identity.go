// Package lights implements per-entity control over the artificial-lights
// blackout state: an allow-list of entities whose lights stay on, and the
// renderer hook shim that applies the exemption one scene light at a time.
package lights

// Identity is an opaque, process-lifetime handle for a live host object: the
// object's raw address. It is compared only for equality and never
// dereferenced by this package. An Identity goes stale the moment the host
// destroys the object; stale values simply stop matching, except in the rare
// case where the host reuses the address for an unrelated object, which is an
// accepted risk of this design.
type Identity uintptr

// NullIdentity marks "no entity". It is never a member of an AllowList.
const NullIdentity Identity = 0
