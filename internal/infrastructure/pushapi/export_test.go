package pushapi

// SetMaxBodyBytes permite a los tests bajar el tope de lectura.
func (c *Client) SetMaxBodyBytes(n int64) { c.maxBody = n }
