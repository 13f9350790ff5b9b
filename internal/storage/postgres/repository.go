package postgres

func (p *Postgres) Reports() *ReportRepo    { return p.Report }
func (p *Postgres) Zones() *ZoneRepo        { return p.Zone }
func (p *Postgres) Acks() *AckRepo          { return p.Ack }
func (p *Postgres) Clusterer() *ClusterRepo { return p.Cluster }
