package aws

import "github.com/topoviz/topoviz/pkg/topology"

// Options parameterizes [MultiRegionWorkload]. The zero value builds the
// plain Shared/Workload topology; DNS adds the Route 53 and ACM layer on
// top of the same structure.
type Options struct {
	// DNS adds hosted zones for the shared and workload accounts plus a
	// regional ACM certificate per workload region, and delegates the
	// workload zone from the main zone.
	DNS bool
}

// workloadRegions are the regions the workload account deploys to.
var workloadRegions = []string{"us-east-1", "us-west-2"}

// MultiRegionWorkload builds the multi-region workload topology: a shared
// account exposing ECR and a Transit Gateway, and a workload account
// running the web services in two regions, all connected through TGW
// attachments into per-region VPCs.
//
// Node identity is explicit: every node carries a unique path-style ID
// (e.g. "workload/us-east-1/eks"). Entities the architecture shares across
// regions — the workload member account, the replicated ECR — exist once,
// owned by the account-level cluster rather than duplicated per region.
func MultiRegionWorkload(opts Options) (*topology.Diagram, error) {
	d := topology.New("Multi region workload")

	if err := d.AddNode(nil, Organizations("org", "AWS Organizations")); err != nil {
		return nil, err
	}

	if err := buildSharedAccount(d); err != nil {
		return nil, err
	}
	if err := buildWorkloadAccount(d); err != nil {
		return nil, err
	}
	if opts.DNS {
		if err := addDNS(d); err != nil {
			return nil, err
		}
	}

	edges := [][2]string{
		{"org", "shared/account"},
		{"org", "workload/account"},
		{"shared/tgw", "shared/tgw-attachment"},
		{"shared/tgw-attachment", "shared/vpc"},
	}
	for _, region := range workloadRegions {
		prefix := "workload/" + region
		edges = append(edges,
			[2]string{"shared/tgw", prefix + "/tgw-attachment"},
			[2]string{prefix + "/tgw-attachment", prefix + "/vpc"},
			[2]string{prefix + "/alb", prefix + "/eks"},
			[2]string{prefix + "/eks", prefix + "/db"},
		)
	}
	edges = append(edges, [2]string{"shared/alb", "shared/eks"})
	if opts.DNS {
		edges = append(edges, [2]string{"shared/dns-zone", "workload/dns-zone"})
	}

	for _, e := range edges {
		if err := d.AddEdge(e[0], e[1]); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// buildSharedAccount declares the shared account cluster: the member
// account itself, multi-region ECR, the Transit Gateway with its local
// attachment and VPC, and the private subnet running the shared services.
func buildSharedAccount(d *topology.Diagram) error {
	shared, err := d.Cluster(nil, "Shared Account")
	if err != nil {
		return err
	}

	nodes := []topology.Node{
		OrganizationsAccount("shared/account", "Shared account"),
		ECR("shared/ecr", "ECR with multiregion replication"),
		TransitGateway("shared/tgw", "Transit Gateway"),
		TransitGatewayAttachment("shared/tgw-attachment", "Transit Gateway Attachment"),
		VPC("shared/vpc", "VPC"),
	}
	for _, n := range nodes {
		if err := d.AddNode(shared, n); err != nil {
			return err
		}
	}

	subnet, err := d.Cluster(shared, "Private Subnet")
	if err != nil {
		return err
	}
	if err := d.AddNode(subnet, ALB("shared/alb", "Application Load Balancer")); err != nil {
		return err
	}
	return d.AddNode(subnet, EKS("shared/eks", "web services"))
}

// buildWorkloadAccount declares the workload account cluster with one
// sub-cluster per region. The member account node lives at the account
// level: it is one account deployed to several regions, not one per
// region.
func buildWorkloadAccount(d *topology.Diagram) error {
	workload, err := d.Cluster(nil, "Workload Account")
	if err != nil {
		return err
	}
	if err := d.AddNode(workload, OrganizationsAccount("workload/account", "Workload account")); err != nil {
		return err
	}

	for _, region := range workloadRegions {
		if err := buildWorkloadRegion(d, workload, region); err != nil {
			return err
		}
	}
	return nil
}

// buildWorkloadRegion declares one regional deployment: TGW attachment,
// VPC, and the public subnet running the web services with their database.
func buildWorkloadRegion(d *topology.Diagram, workload *topology.Cluster, region string) error {
	rc, err := d.Cluster(workload, region)
	if err != nil {
		return err
	}

	prefix := "workload/" + region
	nodes := []topology.Node{
		TransitGatewayAttachment(prefix+"/tgw-attachment", "Transit Gateway Attachment"),
		VPC(prefix+"/vpc", "VPC"),
	}
	for _, n := range nodes {
		if err := d.AddNode(rc, n); err != nil {
			return err
		}
	}

	subnet, err := d.Cluster(rc, "Public Subnet")
	if err != nil {
		return err
	}
	subnetNodes := []topology.Node{
		ALB(prefix+"/alb", "Application Load Balancer"),
		EKS(prefix+"/eks", "web services"),
		RDS(prefix+"/db", "Aurora Global Database"),
	}
	for _, n := range subnetNodes {
		if err := d.AddNode(subnet, n); err != nil {
			return err
		}
	}
	return nil
}

// addDNS adds the DNS/certificate layer: the main hosted zone in the
// shared account, the delegated workload zone in the workload account, and
// an ACM certificate in each workload region. Cluster lookups go by name
// since the clusters already exist.
func addDNS(d *topology.Diagram) error {
	var shared, workload *topology.Cluster
	for _, c := range d.Root().Children() {
		switch c.Name() {
		case "Shared Account":
			shared = c
		case "Workload Account":
			workload = c
		}
	}

	if err := d.AddNode(shared, Route53HostedZone("shared/dns-zone", "Main hosted zone")); err != nil {
		return err
	}
	if err := d.AddNode(workload, Route53HostedZone("workload/dns-zone", "Workload hosted zone")); err != nil {
		return err
	}

	for _, rc := range workload.Children() {
		region := rc.Name()
		cert := CertificateManager("workload/"+region+"/cert", "ACM certificate")
		if err := d.AddNode(rc, cert); err != nil {
			return err
		}
	}
	return nil
}
