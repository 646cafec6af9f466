package core

import (
	"phd/internal/core/domain"
	"phd/internal/ports"
)

const policyKey = "policy.csv"

// RbacEditor maintains the CSV group policies both controllers keep in
// ConfigMaps.
type RbacEditor struct {
	cluster ports.Cluster
}

func ProvideRbacEditor(cluster ports.Cluster) *RbacEditor {
	return &RbacEditor{cluster: cluster}
}

// UpsertPolicy assigns a role to a subject in the named RBAC ConfigMap,
// replacing any existing assignment.
func (e *RbacEditor) UpsertPolicy(configMapName, namespace, subject, role string) error {
	data, err := e.cluster.ReadConfigMap(configMapName, namespace)
	if err != nil {
		return err
	}

	policy := domain.UpsertSubjectRole(data[policyKey], subject, role)
	return e.cluster.PatchConfigMap(configMapName, namespace, map[string]*string{
		policyKey: &policy,
	})
}

// RemovePolicy drops every assignment for the subject. A policy that does
// not mention the subject is left untouched.
func (e *RbacEditor) RemovePolicy(configMapName, namespace, subject string) error {
	data, err := e.cluster.ReadConfigMap(configMapName, namespace)
	if err != nil {
		return err
	}

	current := data[policyKey]
	if current == "" {
		return nil
	}

	updated := domain.RemoveSubject(current, subject)
	if updated == current {
		return nil
	}

	return e.cluster.PatchConfigMap(configMapName, namespace, map[string]*string{
		policyKey: &updated,
	})
}
