package postgres

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
        id BIGSERIAL PRIMARY KEY,
        sku VARCHAR(8) UNIQUE NOT NULL,
        name VARCHAR(255) NOT NULL,
        price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS orders (
        id BIGSERIAL PRIMARY KEY,
        customer_first_name VARCHAR(255) NOT NULL,
        customer_last_name VARCHAR(255) NOT NULL,
        customer_phone VARCHAR(255) NOT NULL,
        customer_email VARCHAR(255) NOT NULL,
        external_order_id VARCHAR(255) UNIQUE NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS order_items (
        id BIGSERIAL PRIMARY KEY,
        order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
        product_id BIGINT NOT NULL REFERENCES products(id),
        quantity INTEGER NOT NULL CHECK (quantity > 0)
    )`,
	`CREATE TABLE IF NOT EXISTS checkout_attempts (
        id BIGSERIAL PRIMARY KEY,
        idempotency_key TEXT UNIQUE NOT NULL,
        buyer_tax_id TEXT NOT NULL,
        payload JSONB NOT NULL,
        status TEXT NOT NULL,
        external_order_id TEXT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`,
	`CREATE TABLE IF NOT EXISTS outbox (
        id BIGSERIAL PRIMARY KEY,
        event_id TEXT UNIQUE NOT NULL,
        topic TEXT NOT NULL,
        key TEXT NOT NULL,
        payload JSONB NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
        sent_at TIMESTAMPTZ
    )`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_checkout_attempts_status ON checkout_attempts(status, updated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_pending ON outbox(id) WHERE sent_at IS NULL`,
	`INSERT INTO products (sku, name, price) VALUES
        ('oweuriek', 'Product A', 100.00),
        ('eepheeje', 'Product B', 150.00)
    ON CONFLICT (sku) DO NOTHING`,
}
