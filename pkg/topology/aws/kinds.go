// Package aws provides the AWS node catalog and the built-in multi-region
// workload topologies.
//
// The catalog mirrors the icon families of AWS architecture diagrams:
// management, network, compute, database, security. Each kind selects an
// icon style at render time and has no structural meaning.
package aws

import (
	"slices"

	"github.com/topoviz/topoviz/pkg/topology"
)

// Node kinds, grouped by AWS service family.
const (
	// Management
	KindOrganizations        topology.Kind = "organizations"
	KindOrganizationsAccount topology.Kind = "organizations-account"

	// Network
	KindTransitGateway           topology.Kind = "transit-gateway"
	KindTransitGatewayAttachment topology.Kind = "transit-gateway-attachment"
	KindVPC                      topology.Kind = "vpc"
	KindALB                      topology.Kind = "alb"
	KindRoute53HostedZone        topology.Kind = "route53-hosted-zone"

	// Compute
	KindECR topology.Kind = "ecr"
	KindEKS topology.Kind = "eks"

	// Database
	KindRDS topology.Kind = "rds"

	// Security
	KindCertificateManager topology.Kind = "certificate-manager"
)

// kinds lists every catalog kind in display order.
var kinds = []topology.Kind{
	KindOrganizations,
	KindOrganizationsAccount,
	KindTransitGateway,
	KindTransitGatewayAttachment,
	KindVPC,
	KindALB,
	KindRoute53HostedZone,
	KindECR,
	KindEKS,
	KindRDS,
	KindCertificateManager,
}

// Kinds returns all catalog kinds in display order.
func Kinds() []topology.Kind { return slices.Clone(kinds) }

// ValidKind reports whether k is part of the catalog.
func ValidKind(k topology.Kind) bool { return slices.Contains(kinds, k) }

// Typed constructors, one per catalog kind. They only fill in the Kind;
// identity and placement stay with the caller.

// Organizations returns an AWS Organizations node.
func Organizations(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindOrganizations}
}

// OrganizationsAccount returns an AWS member account node.
func OrganizationsAccount(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindOrganizationsAccount}
}

// TransitGateway returns a Transit Gateway node.
func TransitGateway(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindTransitGateway}
}

// TransitGatewayAttachment returns a Transit Gateway attachment node.
func TransitGatewayAttachment(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindTransitGatewayAttachment}
}

// VPC returns a VPC node.
func VPC(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindVPC}
}

// ALB returns an Application Load Balancer node.
func ALB(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindALB}
}

// Route53HostedZone returns a Route 53 hosted zone node.
func Route53HostedZone(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindRoute53HostedZone}
}

// ECR returns an Elastic Container Registry node.
func ECR(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindECR}
}

// EKS returns an Elastic Kubernetes Service node.
func EKS(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindEKS}
}

// RDS returns an RDS database node.
func RDS(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindRDS}
}

// CertificateManager returns an ACM certificate node.
func CertificateManager(id, label string) topology.Node {
	return topology.Node{ID: id, Label: label, Kind: KindCertificateManager}
}
