// Package models contains the persisted provisioning record.
//
// Each reference field is a reconcile.Ref embedded as two columns,
// <field>_id and <field>_kind. A zero id means the resource is not provisioned.
package models
